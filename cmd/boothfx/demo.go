package main

import (
	"image"
	"math"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/avatar"
	"github.com/gogpu/boothfx/internal/paint"
	"github.com/gogpu/boothfx/internal/segment"
)

// testCard draws a stand-in camera frame: a gradient wall with a round
// "guest" in the middle. It is used when no source image is configured.
func testCard(w, h int) image.Image {
	pm := boothfx.NewPixmap(w, h)

	steps := 100
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := paint.Fill(boothfx.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2))
		y := float64(h) * t
		paint.FillPolygon(pm, p, rect(0, y, float64(w), float64(h)/float64(steps)+1))
	}

	cx, cy, r := guest(w, h)
	paint.FillCircle(pm, cx, cy-r*0.9, r*0.45, paint.Fill(boothfx.Hex("#e0ac69")))
	paint.FillPolygon(pm, paint.Fill(boothfx.Hex("#3a6ea5")), rect(cx-r, cy-r*0.4, 2*r, float64(h)-(cy-r*0.4)))
	return pm.ToImage()
}

// demoMask marks the guest of testCard as foreground.
func demoMask(w, h int) (*segment.Mask, error) {
	m, err := segment.NewMask(w, h)
	if err != nil {
		return nil, err
	}
	cx, cy, r := guest(w, h)
	hx, hy, hr := cx, cy-r*0.9, r*0.45
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			head := math.Hypot(fx-hx, fy-hy) <= hr
			body := math.Abs(fx-cx) <= r && fy >= cy-r*0.4
			m.Set(x, y, head || body)
		}
	}
	return m, nil
}

// demoPose places keypoints on the testCard guest.
func demoPose(w, h int) *avatar.Pose {
	cx, cy, r := guest(w, h)
	kp := func(part string, x, y float64) avatar.Keypoint {
		return avatar.Keypoint{Part: part, Position: boothfx.Pt(x, y), Score: 0.9}
	}
	headY := cy - r*0.9
	return &avatar.Pose{Score: 0.9, Keypoints: []avatar.Keypoint{
		kp(avatar.Nose, cx, headY+r*0.1),
		kp(avatar.LeftEye, cx-r*0.15, headY-r*0.05),
		kp(avatar.RightEye, cx+r*0.15, headY-r*0.05),
		kp(avatar.LeftShoulder, cx-r*0.8, cy-r*0.3),
		kp(avatar.RightShoulder, cx+r*0.8, cy-r*0.3),
		kp(avatar.LeftWrist, cx-r*1.3, cy+r*0.5),
		kp(avatar.RightWrist, cx+r*1.3, cy+r*0.5),
	}}
}

func guest(w, h int) (cx, cy, r float64) {
	return float64(w) / 2, float64(h) * 0.6, float64(min(w, h)) * 0.2
}

func rect(x, y, w, h float64) []boothfx.Point {
	return []boothfx.Point{
		boothfx.Pt(x, y), boothfx.Pt(x+w, y), boothfx.Pt(x+w, y+h), boothfx.Pt(x, y+h),
	}
}
