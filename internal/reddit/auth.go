package reddit

import (
	"context"
	"net/http"
	"time"

	"github.com/jimezsa/urs/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const TokenURL = "https://www.reddit.com/api/v1/access_token"

// TokenSource returns a cached OAuth token source for cfg. Script apps with a
// username and password use the password grant; anything else authenticates
// application-only with client credentials.
func TokenSource(ctx context.Context, cfg config.Config) oauth2.TokenSource {
	// Reddit rejects token requests without a descriptive user agent.
	httpClient := &http.Client{
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		Transport: userAgentTransport{agent: cfg.UserAgent, next: http.DefaultTransport},
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	endpoint := oauth2.Endpoint{TokenURL: TokenURL, AuthStyle: oauth2.AuthStyleInHeader}

	if cfg.Username != "" && cfg.Password != "" {
		conf := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
		}
		return oauth2.ReuseTokenSource(nil, passwordSource{
			ctx:      ctx,
			conf:     conf,
			username: cfg.Username,
			password: cfg.Password,
		})
	}

	conf := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     endpoint.TokenURL,
		AuthStyle:    endpoint.AuthStyle,
	}
	return conf.TokenSource(ctx)
}

type passwordSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (p passwordSource) Token() (*oauth2.Token, error) {
	return p.conf.PasswordCredentialsToken(p.ctx, p.username, p.password)
}

type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.next.RoundTrip(req)
}
