// Package speech pronounces words through a pluggable voice backend.
//
// An Engine lists voices and speaks one utterance at a time. The Narrator
// sits in front of an engine and gives the quiz a fire-and-forget API: a new
// request cancels the one in flight, voices are loaded once in the
// background, failed deliveries are retried once and then dropped.
package speech

import (
	"context"
	"strings"
)

// Voice is one voice offered by an engine. ID is what the engine needs to
// select it; Lang is a BCP 47 style tag such as "el-GR" or "el".
type Voice struct {
	ID      string
	Name    string
	Lang    string
	Default bool
}

// Utterance is a single speak request. Volume is in [0, 1].
type Utterance struct {
	Text   string
	Lang   string
	Voice  Voice
	Volume float64
}

type Engine interface {
	Voices(ctx context.Context) ([]Voice, error)
	Speak(ctx context.Context, u Utterance) error
}

// MatchVoice picks the voice for lang: an exact tag match first, then a
// voice with the same primary subtag. If neither exists it returns the
// default voice and false.
func MatchVoice(voices []Voice, lang string) (Voice, bool) {
	want := canonicalTag(lang)
	for _, v := range voices {
		if canonicalTag(v.Lang) == want {
			return v, true
		}
	}
	primary := primaryTag(want)
	for _, v := range voices {
		if primaryTag(canonicalTag(v.Lang)) == primary {
			return v, true
		}
	}
	return DefaultVoice(voices), false
}

// DefaultVoice returns the voice flagged as default, else the first one.
func DefaultVoice(voices []Voice) Voice {
	for _, v := range voices {
		if v.Default {
			return v
		}
	}
	if len(voices) > 0 {
		return voices[0]
	}
	return Voice{}
}

func canonicalTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
}

func primaryTag(tag string) string {
	if i := strings.IndexByte(tag, '-'); i >= 0 {
		return tag[:i]
	}
	return tag
}
