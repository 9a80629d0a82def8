package handler

import (
	"stackslice/internal/service"
)

// Handler carries the service plus the dispatch function that hands a created
// job to whichever scheduler the server was started with.
type Handler struct {
	Service  *service.Service
	Dispatch func(jobId string) error
}

func NewHandler(svc *service.Service, dispatch func(jobId string) error) Handler {
	return Handler{
		Service:  svc,
		Dispatch: dispatch,
	}
}
