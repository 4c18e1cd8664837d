package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/auth"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/pkg/ctxutil"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint access tokens for local development",
		Commands: []*cli.Command{
			{
				Name:  "mint",
				Usage: "Print a signed access token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "role", Value: "steward", Usage: "member, steward or admin"},
					&cli.StringFlag{Name: "sub", Usage: "user id (default: random)"},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, _, err := loadConfig(cmd)
					if err != nil {
						return err
					}

					role := domain.Role(cmd.String("role"))
					if !role.IsValid() {
						return fmt.Errorf("--role: unknown role %q", role)
					}

					id := uuid.New()
					if s := cmd.String("sub"); s != "" {
						if id, err = uuid.Parse(s); err != nil {
							return fmt.Errorf("--sub: %w", err)
						}
					}

					jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
					token, err := jwt.GenerateAccessToken(ctxutil.Identity{
						UserID: id,
						Email:  cmd.String("email"),
						Role:   string(role),
					})
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
		},
	}
}
