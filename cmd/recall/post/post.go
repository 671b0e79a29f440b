// Package postcmder provides the post command: the producer-side session hook.
//
// It reads a hook payload (or an explicit transcript path), extracts the most
// recent assistant message, and posts it to the recall API when the
// significance filter matches. Hook commands always exit 0; the caller's
// session must never be delayed or aborted by insight logging.
package postcmder

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"

	"github.com/papercomputeco/recall/pkg/client"
	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/logger"
	"github.com/papercomputeco/recall/pkg/significance"
	"github.com/papercomputeco/recall/pkg/store"
	"github.com/papercomputeco/recall/pkg/transcript"
	"github.com/papercomputeco/recall/pkg/utils"
)

type PostCommander struct {
	target           string
	maxContentLength int
	msgType          string
	sessionID        string
	repo             string
	debug            bool
	logger           *slog.Logger
}

const postLongDesc string = `Post a significant insight from a session transcript.

Without arguments, reads a JSON hook payload from stdin ({"session_id": ...,
"transcript_path": ..., "cwd": ...}) as emitted by coding-assistant stop
hooks. With a path argument, reads that transcript directly.

The latest assistant message is posted only when it passes the significance
filter. The command always exits 0 so a dead or slow server never disturbs
the session that triggered the hook.

Examples:
  recall post < hook-payload.json
  recall post ~/.sessions/current.jsonl --repo my-project`

const postShortDesc string = "Post a significant insight from a session transcript"

func NewPostCmd() *cobra.Command {
	cmder := &PostCommander{}

	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "post [transcript-path]",
		Short: postShortDesc,
		Long:  postLongDesc,
		Args:  cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")

			var err error
			v, err = config.InitViper(configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagAPITarget,
				config.FlagMaxContentLength,
			})

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.debug, _ = cmd.Flags().GetBool("debug")
			cmder.target = v.GetString("client.api_target")
			cmder.maxContentLength = v.GetInt("hooks.max_content_length")

			return cmder.run(cmd, args)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagAPITarget, &cmder.target)
	config.AddIntFlag(cmd, config.Flags, config.FlagMaxContentLength, &cmder.maxContentLength)
	cmd.Flags().StringVar(&cmder.msgType, "type", "insight", "Message type tag")
	cmd.Flags().StringVar(&cmder.sessionID, "session", "", "Session identifier (default: from hook payload)")
	cmd.Flags().StringVar(&cmder.repo, "repo", "", "Originating project name (default: from hook payload cwd)")

	return cmd
}

func (c *PostCommander) run(cmd *cobra.Command, args []string) error {
	if c.debug {
		c.logger = logger.New(logger.WithDebug(true))
	} else {
		c.logger = logger.Nop()
	}

	transcriptPath := ""
	if len(args) > 0 {
		transcriptPath = args[0]
	} else {
		c.readHookPayload(cmd.InOrStdin(), &transcriptPath)
	}

	if transcriptPath == "" {
		c.logger.Debug("no transcript path, nothing to post")
		return nil
	}

	text, err := transcript.LatestAssistantTextFile(transcriptPath)
	if err != nil {
		c.logger.Debug("reading transcript", "error", err)
		return nil
	}

	if !significance.IsSignificant(text) {
		c.logger.Debug("latest assistant message is not significant, skipping")
		return nil
	}

	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}

	msg := store.Message{
		Type:      c.msgType,
		Content:   utils.Truncate(text, c.maxContentLength),
		SessionID: c.sessionID,
		Repo:      c.repo,
	}

	ctx, cancel := context.WithTimeout(context.Background(), client.DefaultTimeout)
	defer cancel()

	created, err := client.New(c.target).Post(ctx, msg)
	if err != nil {
		c.logger.Debug("posting insight", "error", err)
		return nil
	}

	c.logger.Debug("posted insight", "id", created.ID)
	return nil
}

// readHookPayload extracts transcript path, session id, and repo from a JSON
// hook payload on stdin. Malformed payloads are ignored; the hook contract is
// best effort.
func (c *PostCommander) readHookPayload(r io.Reader, transcriptPath *string) {
	payload, err := io.ReadAll(r)
	if err != nil || !gjson.ValidBytes(payload) {
		return
	}

	*transcriptPath = gjson.GetBytes(payload, "transcript_path").String()

	if c.sessionID == "" {
		c.sessionID = gjson.GetBytes(payload, "session_id").String()
	}

	if c.repo == "" {
		if cwd := gjson.GetBytes(payload, "cwd").String(); cwd != "" {
			c.repo = filepath.Base(cwd)
		}
	}
}
