package avatar

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/boothfx"
	"github.com/gogpu/boothfx/internal/blend"
	"github.com/gogpu/boothfx/internal/paint"
)

const (
	noseMinScore     = 0.7
	wristMinScore    = 0.5
	shoulderMinScore = 0.5

	emitPeriod = 3

	trailLife   = 20
	trailShrink = 0.9

	sparkLife     = 30
	sparkShrink   = 0.95
	sparksPerEmit = 3
	sparkSpeed    = 5
)

var (
	crownColor = boothfx.Hex("#00c3ff")
	gemColors  = [3]boothfx.RGBA{boothfx.Hex("#ff0066"), boothfx.Hex("#ffcc00"), boothfx.Hex("#00ff99")}
	padColor   = boothfx.Hex("#222233")
	padLine    = boothfx.Hex("#00c3ff")
)

// DrawAvatar draws the avatar decorations for pose onto dst:
//   - a crown with three gems when the nose is confidently seen (> 0.7),
//     sized from the distance between the eyes
//   - energy trails when both wrists are seen (> 0.5); new trail
//     particles are emitted every 3rd frame and trails advances one tick
//   - shoulder pads with a pulsing dot when both shoulders are seen (> 0.5)
//
// A nil pose draws nothing.
func DrawAvatar(dst *boothfx.Pixmap, pose *Pose, frame uint64, trails *boothfx.ParticleSet, rng *rand.Rand) {
	if dst == nil || pose == nil {
		return
	}

	if nose, ok := pose.confident(Nose, noseMinScore); ok {
		le, lok := pose.Find(LeftEye)
		re, rok := pose.Find(RightEye)
		if lok && rok {
			drawCrown(dst, nose.Position, le.Position.Distance(re.Position)*3, frame)
		}
	}

	lw, lok := pose.confident(LeftWrist, wristMinScore)
	rw, rok := pose.confident(RightWrist, wristMinScore)
	if lok && rok && trails != nil {
		if frame%emitPeriod == 0 {
			hue := float64((frame * 3) % 360)
			emitTrail(trails, rng, lw.Position, boothfx.HSL(hue, 1, 0.6))
			emitTrail(trails, rng, rw.Position, boothfx.HSL(hue+180, 1, 0.6))
		}
		drawParticles(dst, trails)
		trails.Update()
	}

	ls, lok := pose.confident(LeftShoulder, shoulderMinScore)
	rs, rok := pose.confident(RightShoulder, shoulderMinScore)
	if lok && rok {
		size := math.Abs(rs.Position.X-ls.Position.X) * 0.3
		drawPad(dst, ls.Position, size, -1, frame)
		drawPad(dst, rs.Position, size, 1, frame)
	}
}

// Animate emits additive sparks from every confidently seen wrist on
// every 3rd frame, then draws and advances sparks one tick.
func Animate(dst *boothfx.Pixmap, pose *Pose, frame uint64, sparks *boothfx.ParticleSet, rng *rand.Rand) {
	if dst == nil || pose == nil || sparks == nil {
		return
	}
	if frame%emitPeriod == 0 {
		for _, part := range []string{LeftWrist, RightWrist} {
			w, ok := pose.confident(part, wristMinScore)
			if !ok {
				continue
			}
			for i := 0; i < sparksPerEmit; i++ {
				sparks.Emit(boothfx.Particle{
					X:        w.Position.X,
					Y:        w.Position.Y,
					VX:       (rng.Float64() - 0.5) * sparkSpeed,
					VY:       (rng.Float64() - 0.5) * sparkSpeed,
					Size:     rng.Float64()*15 + 5,
					Shrink:   sparkShrink,
					Color:    boothfx.HSL(rng.Float64()*360, 1, 0.5),
					Life:     sparkLife,
					Additive: true,
				})
			}
		}
	}
	drawParticles(dst, sparks)
	sparks.Update()
}

func emitTrail(trails *boothfx.ParticleSet, rng *rand.Rand, at boothfx.Point, c boothfx.RGBA) {
	trails.Emit(boothfx.Particle{
		X:      at.X,
		Y:      at.Y,
		Size:   rng.Float64()*10 + 5,
		Shrink: trailShrink,
		Color:  c,
		Life:   trailLife,
	})
}

// drawParticles draws every live particle faded by its remaining life.
func drawParticles(dst *boothfx.Pixmap, ps *boothfx.ParticleSet) {
	ps.Each(func(p *boothfx.Particle) {
		pt := paint.Fill(p.Color)
		pt.Alpha = p.Opacity()
		if p.Additive {
			pt.Mode = blend.ModeLighter
		}
		paint.FillCircle(dst, p.X, p.Y, p.Size, pt)
	})
}

// drawCrown draws the crown centered above the nose. head is the
// estimated head size in pixels.
func drawCrown(dst *boothfx.Pixmap, nose boothfx.Point, head float64, frame uint64) {
	if head <= 0 {
		return
	}
	o := boothfx.Pt(nose.X, nose.Y-head*0.5)
	h := head * 0.4
	w := head * 1.2

	at := func(x, y float64) boothfx.Point { return o.Add(boothfx.Pt(x, y)) }
	paint.FillPolygon(dst, paint.Fill(crownColor), []boothfx.Point{
		at(-w/2, 0),
		at(w/2, 0),
		at(w/2+10, -h*0.3),
		at(w/3, -h*0.5),
		at(w/6, -h),
		at(-w/6, -h),
		at(-w/3, -h*0.5),
		at(-w/2-10, -h*0.3),
	})

	for i, x := range [3]float64{-w / 4, 0, w / 4} {
		c := at(x, -h*0.6)
		paint.FillCircle(dst, c.X, c.Y, head*0.08, paint.Fill(gemColors[i]))

		// Glowing core: a soft halo of the gem color around a smaller disc.
		core := head * 0.05
		blur := 10 + math.Sin(float64(frame)*0.1+float64(i))*5
		halo := core + blur/2
		paint.FillCircle(dst, c.X, c.Y, halo, paint.NewPaint(paint.NewRadialGradient(c.X, c.Y, halo,
			paint.ColorStop{Offset: core / halo, Color: gemColors[i]},
			paint.ColorStop{Offset: 1, Color: gemColors[i].WithAlpha(0)},
		)))
		paint.FillCircle(dst, c.X, c.Y, core, paint.Fill(gemColors[i]))
	}
}

// drawPad draws one shoulder pad at shoulder pointing in direction dir
// (-1 for the left shoulder, 1 for the right).
func drawPad(dst *boothfx.Pixmap, shoulder boothfx.Point, size, dir float64, frame uint64) {
	if size <= 0 {
		return
	}
	at := func(x, y float64) boothfx.Point { return shoulder.Add(boothfx.Pt(dir*x, y)) }

	paint.FillPolygon(dst, paint.Fill(padColor), []boothfx.Point{
		at(0, 0),
		at(size, -size*0.3),
		at(size*1.2, 0),
		at(size, size*0.3),
	})

	line := paint.Fill(padLine)
	line.LineWidth = 2
	paint.StrokeLine(dst, shoulder, at(size*0.8, -size*0.2), line)
	paint.StrokeLine(dst, shoulder, at(size*0.8, size*0.2), line)

	glow := 0.5 + math.Sin(float64(frame)*0.1)*0.5
	dot := at(size*0.6, 0)
	paint.FillCircle(dst, dot.X, dot.Y, size*0.1, paint.Fill(boothfx.RGB8(0, 195, 255, glow)))
}
