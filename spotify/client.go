// Package spotify looks up catalog metadata on the Spotify Web API using
// the client-credentials flow. It backs the admin sync endpoints that fill
// in streaming links and popularity scores.
package spotify

import (
	"context"
	"errors"
	"fmt"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"
)

var ErrNotFound = errors.New("no match on spotify")

type Client struct {
	conf *clientcredentials.Config
}

func New(clientID, clientSecret string) *Client {
	return &Client{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     spotify.TokenURL,
		},
	}
}

// Enabled reports whether credentials were configured.
func (c *Client) Enabled() bool {
	return c.conf.ClientID != "" && c.conf.ClientSecret != ""
}

func (c *Client) api(ctx context.Context) (spotify.Client, error) {
	token, err := c.conf.Token(ctx)
	if err != nil {
		return spotify.Client{}, fmt.Errorf("getting spotify token: %w", err)
	}
	return spotify.Authenticator{}.NewClient(token), nil
}

// ArtistInfo is the subset of Spotify artist metadata the catalog stores.
type ArtistInfo struct {
	Name       string
	URL        string
	ImageURL   string
	Popularity int
}

// LookupArtist searches by name and returns the most popular match.
func (c *Client) LookupArtist(ctx context.Context, name string) (*ArtistInfo, error) {
	client, err := c.api(ctx)
	if err != nil {
		return nil, err
	}

	results, err := client.Search(name, spotify.SearchTypeArtist)
	if err != nil {
		return nil, fmt.Errorf("searching for artist: %w", err)
	}
	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		return nil, ErrNotFound
	}

	best := results.Artists.Artists[0]
	for _, a := range results.Artists.Artists {
		if a.Popularity > best.Popularity {
			best = a
		}
	}

	info := &ArtistInfo{
		Name:       best.Name,
		URL:        best.ExternalURLs["spotify"],
		Popularity: best.Popularity,
	}
	if len(best.Images) > 0 {
		info.ImageURL = best.Images[0].URL
	}
	return info, nil
}
