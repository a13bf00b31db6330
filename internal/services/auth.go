package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/coverwall/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

// ClientCredentials exchanges the app's client id and secret for an access token and
// returns an [http.Client] that attaches and refreshes it on every request.
//
// The first token is fetched eagerly so bad credentials fail here rather than on the
// first catalog call. onToken, when non-nil, is invoked every time a new access token
// is obtained.
func ClientCredentials(ctx context.Context, creds shared.SpotifyConfig, timeout time.Duration, onToken func(*oauth2.Token)) (*http.Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret are required", shared.ErrMissingCredentials)
	}

	tokenURL := creds.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}

	base := &http.Client{Timeout: timeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	config := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
	}

	source := &refreshableTokenSource{source: config.TokenSource(ctx), callback: onToken}
	if _, err := source.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	client := oauth2.NewClient(ctx, source)
	client.Timeout = timeout
	return client, nil
}

// refreshableTokenSource wraps an [oauth2.TokenSource] and reports each new access token.
type refreshableTokenSource struct {
	mu       sync.Mutex
	source   oauth2.TokenSource
	callback func(*oauth2.Token)
	last     string
}

func (r *refreshableTokenSource) Token() (*oauth2.Token, error) {
	token, err := r.source.Token()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	changed := token.AccessToken != r.last
	r.last = token.AccessToken
	r.mu.Unlock()

	if changed && r.callback != nil {
		r.callback(token)
	}
	return token, nil
}
