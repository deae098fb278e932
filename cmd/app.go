package cmd

import (
	"time"

	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/speech"
	"github.com/lai323/lexis/wordset"
	"go.uber.org/zap"
)

// loadCatalog picks the lessons: an explicit dataset file, else the current
// imported set, else the built-in lessons.
func loadCatalog() (*lessons.Catalog, error) {
	if config.LessonsFile != "" {
		return lessons.LoadFile(fs, config.LessonsFile)
	}
	m, err := wordset.NewWordSetManage(fs, config.SetsDir())
	if err != nil {
		return nil, err
	}
	return m.Catalog()
}

// newNarrator builds the configured speech engine. It returns nil when
// speech is disabled or the engine cannot be set up.
func newNarrator() *speech.Narrator {
	log := logger.Named("speech")
	var engine speech.Engine
	switch config.SpeechEngine {
	case "none":
		return nil
	case "remote":
		cache, err := speech.NewClipCache(fs, config.ClipCacheDir())
		if err != nil {
			log.Warn("speech disabled", zap.Error(err))
			return nil
		}
		r := speech.NewRemote(cache, []string{config.SpeechLang, "ru-RU"}, config.FfplayPath, config.FfplayArgs)
		if config.TTSURL != "" {
			r.URLTemplate = config.TTSURL
		}
		engine = r
	default:
		engine = speech.NewESpeak(config.EspeakPath, "en")
	}
	return speech.NewNarrator(engine,
		speech.WithLogger(log.With(zap.String("engine", config.SpeechEngine))),
		speech.WithVolume(config.Volume),
		speech.WithPriming(config.Priming),
		speech.WithKeepAlive(time.Duration(config.KeepAliveSeconds)*time.Second),
	)
}

// pronouncer keeps a nil narrator from becoming a non-nil interface.
func pronouncer(n *speech.Narrator) flashcard.Pronouncer {
	if n == nil {
		return nil
	}
	return n
}
