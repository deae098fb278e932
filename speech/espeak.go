package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ESpeak drives the espeak-ng command line synthesizer.
type ESpeak struct {
	Path string
	// Default is the language whose voice is used when the requested
	// language is missing.
	Default string
}

func NewESpeak(path, defaultVoice string) *ESpeak {
	if path == "" {
		path = "espeak-ng"
	}
	return &ESpeak{Path: path, Default: defaultVoice}
}

func (e *ESpeak) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, e.Path, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("%s --voices: %w", e.Path, err)
	}
	return parseESpeakVoices(out, e.Default), nil
}

func (e *ESpeak) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, e.Path, espeakArgs(u)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", e.Path, err, bytes.TrimSpace(out))
	}
	return nil
}

func espeakArgs(u Utterance) []string {
	var args []string
	voice := u.Voice.ID
	if voice == "" {
		voice = u.Lang
	}
	if voice != "" {
		args = append(args, "-v", voice)
	}
	// espeak amplitude runs 0-200 with 100 as normal.
	amp := int(u.Volume * 100)
	if amp < 0 {
		amp = 0
	}
	if amp > 200 {
		amp = 200
	}
	args = append(args, "-a", strconv.Itoa(amp), "--", u.Text)
	return args
}

// parseESpeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  el              --/M      Greek              grk/el
func parseESpeakVoices(out []byte, defaultLang string) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		lang := fields[1]
		voices = append(voices, Voice{
			ID:      lang,
			Name:    fields[3],
			Lang:    lang,
			Default: defaultLang != "" && primaryTag(canonicalTag(lang)) == primaryTag(canonicalTag(defaultLang)),
		})
	}
	return voices
}
