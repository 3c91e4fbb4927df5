package cli

import (
	"time"

	"github.com/dimitrije/eduadmin/internal/auth"
	"github.com/spf13/cobra"
)

type tokenInfo struct {
	Type      string     `json:"type"`
	Subject   string     `json:"subject,omitempty"`
	Username  string     `json:"username,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Expired   bool       `json:"expired"`
}

func NewTokenCommand(c *console) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the subject and expiry of the configured token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.token == "" {
				return auth.ErrNoToken
			}
			if !auth.IsJWT(c.token) {
				return printJSON(cmd.OutOrStdout(), tokenInfo{Type: "opaque"})
			}

			claims, err := auth.Inspect(c.token)
			if err != nil {
				return err
			}

			info := tokenInfo{
				Type:     "jwt",
				Subject:  claims.Subject,
				Username: claims.Username,
				Roles:    claims.Roles,
			}
			if claims.IssuedAt != nil {
				t := claims.IssuedAt.Time.UTC()
				info.IssuedAt = &t
			}
			if claims.ExpiresAt != nil {
				t := claims.ExpiresAt.Time.UTC()
				info.ExpiresAt = &t
				info.Expired = !time.Now().Before(t)
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}
