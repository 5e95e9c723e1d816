package model

import (
	"encoding/json"
	"strings"
)

// TagSet keeps tags in insertion order without duplicates.
type TagSet struct {
	tags []string
}

func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add trims tag and appends it unless it is blank or already present.
func (s *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

func (s *TagSet) Remove(tag string) bool {
	for i, t := range s.tags {
		if t == tag {
			s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
			return true
		}
	}
	return false
}

func (s TagSet) Contains(tag string) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s TagSet) Len() int { return len(s.tags) }

// Values returns a copy; never nil.
func (s TagSet) Values() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *TagSet) Clear() { s.tags = nil }

func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}
