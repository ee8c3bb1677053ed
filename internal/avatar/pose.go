// Package avatar draws pose-driven decorations over a frame: a crown
// above the head, energy trails from the wrists, shoulder pads and
// additive sparks. Poses come from an external estimator.
package avatar

import (
	"sync/atomic"

	"github.com/gogpu/boothfx"
)

// Keypoint part names, as reported by the pose estimator.
const (
	Nose          = "nose"
	LeftEye       = "leftEye"
	RightEye      = "rightEye"
	LeftShoulder  = "leftShoulder"
	RightShoulder = "rightShoulder"
	LeftWrist     = "leftWrist"
	RightWrist    = "rightWrist"
)

// MinPoseScore is the overall confidence a pose needs to replace the
// stored one. Weaker estimates are dropped and the previous pose stays.
const MinPoseScore = 0.2

// Keypoint is one detected body part.
type Keypoint struct {
	Part     string
	Position boothfx.Point
	Score    float64
}

// Pose is one estimate of a single person's keypoints.
type Pose struct {
	Score     float64
	Keypoints []Keypoint
}

// Find returns the keypoint for part.
func (p *Pose) Find(part string) (Keypoint, bool) {
	if p == nil {
		return Keypoint{}, false
	}
	for _, k := range p.Keypoints {
		if k.Part == part {
			return k, true
		}
	}
	return Keypoint{}, false
}

// confident returns the keypoint for part if its score exceeds threshold.
func (p *Pose) confident(part string, threshold float64) (Keypoint, bool) {
	k, ok := p.Find(part)
	if !ok || k.Score <= threshold {
		return Keypoint{}, false
	}
	return k, true
}

// PoseStore holds the latest accepted pose. The estimator publishes at
// its own cadence; the render loop reads without blocking.
type PoseStore struct {
	latest atomic.Pointer[Pose]
}

// Publish stores p if its score exceeds MinPoseScore and reports whether
// it was accepted.
func (s *PoseStore) Publish(p *Pose) bool {
	if p == nil || p.Score <= MinPoseScore {
		return false
	}
	s.latest.Store(p)
	return true
}

// Clear forgets the stored pose.
func (s *PoseStore) Clear() {
	s.latest.Store(nil)
}

// LatestPose returns the stored pose, if any.
func (s *PoseStore) LatestPose() (*Pose, bool) {
	p := s.latest.Load()
	return p, p != nil
}
