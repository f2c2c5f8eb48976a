// Package model contains the marketplace domain entities.
package model

// User is implemented by both marketplace sides and exposes the unique key
// under which an entity is stored.
type User interface {
	ID() string
}

// SkillCount is the number of skill dimensions tracked per freelancer:
// technical proficiency, communication, reliability, efficiency, and
// attention to detail.
const SkillCount = 5

// Skill bounds.
const (
	SkillMin = 0
	SkillMax = 100
)

// SkillVector holds one value per skill dimension, each in [0,100].
type SkillVector [SkillCount]int

// InRange reports whether every dimension is within [SkillMin, SkillMax].
func (v SkillVector) InRange() bool {
	for _, s := range v {
		if s < SkillMin || s > SkillMax {
			return false
		}
	}
	return true
}

// Dot returns the dot product with another vector.
func (v SkillVector) Dot(o SkillVector) int {
	dot := 0
	for i := range v {
		dot += v[i] * o[i]
	}
	return dot
}

// Sum returns the sum of all dimensions.
func (v SkillVector) Sum() int {
	sum := 0
	for _, s := range v {
		sum += s
	}
	return sum
}
