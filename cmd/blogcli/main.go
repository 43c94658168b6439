package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/techikansh/blogging-platform/internal/api"
	"github.com/techikansh/blogging-platform/internal/auth"
	"github.com/techikansh/blogging-platform/internal/config"
	"github.com/techikansh/blogging-platform/internal/store"
	"github.com/techikansh/blogging-platform/internal/utils"
)

// app wires the client stack together once per invocation: config from
// env, auth store seeded from the token file, API client drawing its
// bearer token from the auth store, post store on top.
type app struct {
	cfg    *config.Config
	auth   *auth.Store
	client *api.Client
	store  *store.PostStore
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "blogcli",
		Short:         "Terminal client for the blogging platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := utils.InitLogger(cfg.LogLevel, cfg.Debug); err != nil {
				return err
			}

			a.cfg = cfg
			a.auth = auth.NewStore(auth.NewFileStorage(cfg.TokenFile))
			a.client = api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, a.auth)
			a.store = store.NewPostStore(a.client, store.NotifierFunc(printNotification))
			return nil
		},
	}

	root.AddCommand(
		newPostsCmd(a),
		newBookmarksCmd(a),
		newLikeCmd(a),
		newBookmarkCmd(a),
		newUnbookmarkCmd(a),
		newShareCmd(a),
		newCommentCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
