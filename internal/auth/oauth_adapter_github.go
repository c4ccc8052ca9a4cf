package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const ProviderGithub = "github"

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHubOAuthConfig holds configuration for the GitHub OAuth provider.
// A missing client ID disables the provider rather than failing startup.
type GitHubOAuthConfig struct {
	ClientID     string        `env:"GITHUB_OAUTH_CLIENT_ID"`
	ClientSecret string        `env:"GITHUB_OAUTH_CLIENT_SECRET"`
	RedirectURL  string        `env:"GITHUB_OAUTH_REDIRECT_URL"`
	Scopes       []string      `env:"GITHUB_OAUTH_SCOPES" envSeparator:"," envDefault:"user:email"`
	StateTTL     time.Duration `env:"GITHUB_OAUTH_STATE_TTL" envDefault:"10m"`
}

type githubAdapter struct {
	conf       *oauth2.Config
	httpClient *http.Client
	userURL    string
	emailsURL  string
}

// NewGitHubAdapter creates a GitHub OAuth provider adapter.
func NewGitHubAdapter(cfg GitHubOAuthConfig) ProviderAdapter {
	return &githubAdapter{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     github.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userURL:    githubUserURL,
		emailsURL:  githubEmailsURL,
	}
}

func (a *githubAdapter) ProviderID() string {
	return ProviderGithub
}

func (a *githubAdapter) AuthURL(state string) string {
	return a.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ResolveProfile exchanges the authorization code and resolves the account's
// email. GitHub omits the email from the profile payload unless it is public,
// so the adapter falls back to the emails endpoint and picks the entry marked
// both primary and verified, then any verified entry. No verified email means
// ErrEmailUnavailable.
func (a *githubAdapter) ResolveProfile(ctx context.Context, code string) (ProviderProfile, error) {
	tok, err := a.conf.Exchange(ctx, code)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("%w: exchange code: %w", ErrProviderUnavailable, err)
	}

	user, err := a.fetchUser(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("%w: fetch github profile: %w", ErrProviderUnavailable, err)
	}

	// A public profile email is only shown by GitHub once verified.
	if user.Email != "" {
		return ProviderProfile{Email: user.Email, EmailVerified: true}, nil
	}

	emails, err := a.fetchEmails(ctx, tok.AccessToken)
	if err != nil {
		return ProviderProfile{}, fmt.Errorf("%w: fetch github emails: %w", ErrProviderUnavailable, err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return ProviderProfile{Email: e.Email, EmailVerified: true}, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return ProviderProfile{Email: e.Email, EmailVerified: true}, nil
		}
	}

	return ProviderProfile{}, ErrEmailUnavailable
}

type githubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (a *githubAdapter) fetchUser(ctx context.Context, accessToken string) (*githubUser, error) {
	var user githubUser
	if err := a.getJSON(ctx, a.userURL, accessToken, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *githubAdapter) fetchEmails(ctx context.Context, accessToken string) ([]githubEmail, error) {
	var emails []githubEmail
	if err := a.getJSON(ctx, a.emailsURL, accessToken, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (a *githubAdapter) getJSON(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
