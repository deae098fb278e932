package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTTSURL is the Google Translate speech endpoint. {lang} and {text}
// are replaced with query-escaped values.
const DefaultTTSURL = "https://translate.google.com/translate_tts?ie=UTF-8&client=tw-ob&tl={lang}&q={text}"

// Remote downloads spoken clips from an HTTP endpoint and plays them with
// ffplay. Clips are cached so each phrase is fetched once.
type Remote struct {
	URLTemplate string
	Langs       []string
	FfplayPath  string
	FfplayArgs  []string
	Timeout     time.Duration

	client *http.Client
	cache  *ClipCache
	play   func(ctx context.Context, file string, volume float64) error
}

func NewRemote(cache *ClipCache, langs []string, ffplayPath string, ffplayArgs []string) *Remote {
	r := &Remote{
		URLTemplate: DefaultTTSURL,
		Langs:       langs,
		FfplayPath:  ffplayPath,
		FfplayArgs:  ffplayArgs,
		Timeout:     10 * time.Second,
		client:      http.DefaultClient,
		cache:       cache,
	}
	r.play = r.ffplay
	return r
}

// Voices lists one voice per configured language; the first is the default.
func (r *Remote) Voices(ctx context.Context) ([]Voice, error) {
	voices := make([]Voice, 0, len(r.Langs))
	for i, l := range r.Langs {
		voices = append(voices, Voice{ID: l, Name: "remote " + l, Lang: l, Default: i == 0})
	}
	return voices, nil
}

func (r *Remote) Speak(ctx context.Context, u Utterance) error {
	lang := u.Voice.Lang
	if lang == "" {
		lang = u.Lang
	}
	key := r.cache.Key(lang, u.Text)
	_, ok, err := r.cache.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		data, err := r.fetch(ctx, lang, u.Text)
		if err != nil {
			return err
		}
		if err := r.cache.Set(key, data); err != nil {
			return err
		}
	}
	return r.play(ctx, r.cache.Path(key), u.Volume)
}

func (r *Remote) clipURL(lang, text string) string {
	return strings.NewReplacer(
		"{lang}", url.QueryEscape(lang),
		"{text}", url.QueryEscape(text),
	).Replace(r.URLTemplate)
}

func (r *Remote) fetch(ctx context.Context, lang, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.clipURL(lang, text), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch clip: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch clip: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch clip: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch clip: empty body")
	}
	return data, nil
}

func (r *Remote) ffplay(ctx context.Context, file string, volume float64) error {
	if r.FfplayPath == "" {
		return fmt.Errorf("ffplay path not set")
	}
	args := append([]string{}, r.FfplayArgs...)
	if volume < 1 {
		args = append(args, "-volume", strconv.Itoa(int(volume*100)))
	}
	args = append(args, file)
	return exec.CommandContext(ctx, r.FfplayPath, args...).Run()
}
