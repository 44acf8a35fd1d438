package domain

import "errors"

var (
	// ErrProductNotFound is returned when no catalog product has the given id
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrAIServiceFailure is returned when a call to the AI service fails
	ErrAIServiceFailure = errors.New("AI service request failed")

	// ErrAIEmptyResult is returned when the AI service declines or returns nothing usable
	ErrAIEmptyResult = errors.New("the AI was unable to process your request")

	// ErrFeedFailure is returned when the catalog feed cannot be fetched or parsed
	ErrFeedFailure = errors.New("catalog feed request failed")

	// ErrSourceImageUnavailable is returned when the image to refine cannot be fetched
	ErrSourceImageUnavailable = errors.New("source image could not be fetched; try fresh generation mode instead")

	// ErrEditSessionNotFound is returned when an image edit session is unknown or expired
	ErrEditSessionNotFound = errors.New("image edit session not found")

	// ErrAssistantBusy is returned when a chat request is already in flight
	ErrAssistantBusy = errors.New("assistant is already answering")
)
