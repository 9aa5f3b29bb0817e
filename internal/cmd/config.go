package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jimezsa/urs/internal/config"
	"github.com/jimezsa/urs/internal/export"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration with secrets masked."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	ctx.UI.Infof("Add your Reddit app credentials to %s", ctx.UI.Path(paths[0]))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	rows := [][]string{
		{"client_id", cfg.ClientID},
		{"client_secret", mask(cfg.ClientSecret)},
		{"user_agent", cfg.UserAgent},
		{"username", cfg.Username},
		{"password", mask(cfg.Password)},
		{"scrapes_dir", cfg.ScrapesDir},
		{"timeout_seconds", strconv.Itoa(cfg.TimeoutSeconds)},
	}
	return export.WriteTable(ctx.Out, []string{"key", "value"}, rows, ctx.UI.ColorEnabled)
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
