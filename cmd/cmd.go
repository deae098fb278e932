package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lai323/lexis/browse"
	lexisconfig "github.com/lai323/lexis/config"
	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/logging"
	"github.com/lai323/lexis/practice"
	"github.com/lai323/lexis/wordset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath  string
	storagePath string
	lessonsFile string
	sayLang     string
	pracOpt     practice.Options
	setOpt      setOptions

	fs     = afero.NewOsFs()
	config lexisconfig.Config
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:          "lexis",
		Short:        "Greek–Russian vocabulary lessons, search and flashcards",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	lessonsCmd = &cobra.Command{
		Use:   "lessons",
		Short: "list lessons grouped by number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			printMenu(cmd.OutOrStdout(), c)
			return nil
		},
	}
	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "print words matching a query, ignoring accents and case",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			printSearch(cmd.OutOrStdout(), strings.Join(args, " "), c)
			return nil
		},
	}
	browseCmd = &cobra.Command{
		Use:   "browse [query]",
		Short: "browse lessons with live search",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			narrator := newNarrator()
			if narrator != nil {
				defer narrator.Close()
			}
			return browse.Start(c, browse.Options{
				Query:   strings.Join(args, " "),
				Speaker: pronouncer(narrator),
				Lang:    config.SpeechLang,
				Logger:  logger.Named("browse"),
			})
		},
	}
	quizCmd = &cobra.Command{
		Use:   "quiz",
		Short: "flashcard self-check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCatalog()
			if err != nil {
				return err
			}
			sel, err := pracOpt.Selection(c)
			if err != nil {
				return err
			}
			mode, err := pracOpt.QuizMode(config.QuizMode)
			if err != nil {
				return err
			}
			narrator := newNarrator()
			if narrator != nil {
				defer narrator.Close()
			}
			engine := flashcard.New(c,
				flashcard.WithPronouncer(pronouncer(narrator), config.SpeechLang),
				flashcard.WithLogger(logger.Named("quiz")),
			)
			return practice.Start(engine, c, sel, mode, logger.Named("practice"))
		},
	}
	sayCmd = &cobra.Command{
		Use:   "say <text>",
		Short: "pronounce text and wait until it is spoken",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			narrator := newNarrator()
			if narrator == nil {
				return errors.New("speech is disabled (SpeechEngine: none)")
			}
			defer narrator.Close()
			lang := sayLang
			if lang == "" {
				lang = config.SpeechLang
			}
			narrator.Pronounce(flashcard.StripAnnotations(strings.Join(args, " ")), lang)
			narrator.Wait()
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set",
		Short: "manage imported lesson sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := wordset.NewWordSetManage(fs, config.SetsDir())
			if err != nil {
				return err
			}
			return runSet(cmd, m, setOpt)
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("config file (default is %s)", lexisconfig.DefaultConfigPath))
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", fmt.Sprintf("storage dir (default is %s)", lexisconfig.DefaultStorageDir))
	rootCmd.PersistentFlags().StringVar(&lessonsFile, "lessons-file", "", "lesson dataset file (YAML or JSON) instead of the built-in lessons")

	quizCmd.Flags().StringSliceVar(&pracOpt.Lessons, "lessons", nil, "lessons to draw from, e.g. 1.1,2 (default all)")
	quizCmd.Flags().StringVar(&pracOpt.Mode, "mode", "", "audio, gr-ru or ru-gr (default from config)")

	sayCmd.Flags().StringVar(&sayLang, "lang", "", "language tag (default from config)")

	setCmd.Flags().StringVar(&setOpt.Import, "import", "", "import a lesson set from an HTML, YAML or JSON file")
	setCmd.Flags().StringVar(&setOpt.Name, "name", "", "name for the imported set (default file name)")
	setCmd.Flags().BoolVar(&setOpt.List, "list", false, "list lesson sets")
	setCmd.Flags().StringVar(&setOpt.Show, "show", "", "print the lessons of a set")
	setCmd.Flags().StringVar(&setOpt.Delete, "del", "", "delete a set")
	setCmd.Flags().StringVar(&setOpt.Use, "use", "", "use a set instead of the built-in lessons (\"builtin\" to go back)")

	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(setCmd)
}

func initConfig() {
	var err error
	config, err = lexisconfig.InitConfig(fs, configPath)
	if err != nil {
		log.Fatal(err)
	}
	if storagePath != "" {
		config.StoragePath = storagePath
	}
	if lessonsFile != "" {
		config.LessonsFile = lessonsFile
	}
	logger = logging.Must(config.LogFile, config.LogLevel)
	logger.Debug("config loaded",
		zap.String("storage", config.StoragePath),
		zap.String("speech", config.SpeechEngine),
	)
}
