package interfaces

import "reviewreminder/internal/models"

type PresentationHost interface {
	Present(title, message string, actions []models.Action)
	Dismiss()
	IsVisible() bool
}

type StoreLinkOpener interface {
	OpenReviewPage(appID string) error
}
