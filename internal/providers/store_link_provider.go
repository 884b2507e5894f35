package providers

import (
	"errors"
	"fmt"
	"net/url"
	"reviewreminder/internal/structures"
	"sync"
)

var ErrEmptyAppID = errors.New("app id is empty")

// StoreLinkProvider builds the store review link. A headless host cannot open
// it, so the link is logged and kept for the HTTP response.
type StoreLinkProvider struct {
	mu       sync.Mutex
	template string
	lastURL  string
	logger   Logger
}

func NewStoreLinkProvider(conf *structures.Config, logger Logger) *StoreLinkProvider {
	tpl := conf.StoreLink.ReviewURLTemplate
	if tpl == "" {
		tpl = structures.DefaultReviewURLTemplate
	}
	return &StoreLinkProvider{template: tpl, logger: logger}
}

func (sp *StoreLinkProvider) ReviewURL(appID string) (string, error) {
	if appID == "" {
		return "", ErrEmptyAppID
	}
	link := fmt.Sprintf(sp.template, url.QueryEscape(appID))
	if _, err := url.Parse(link); err != nil {
		return "", fmt.Errorf("invalid review url %q: %w", link, err)
	}
	return link, nil
}

func (sp *StoreLinkProvider) OpenReviewPage(appID string) error {
	link, err := sp.ReviewURL(appID)
	if err != nil {
		return err
	}

	sp.mu.Lock()
	sp.lastURL = link
	sp.mu.Unlock()

	sp.logger.Infof(TypeSession, "Opening review page %s", link)
	return nil
}

func (sp *StoreLinkProvider) LastURL() string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.lastURL
}
