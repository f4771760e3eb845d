package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	storeBackend string
	contactReady bool
}

// NewHealthUsecase reports liveness plus whether the contact endpoint is wired.
func NewHealthUsecase(storeBackend string, contactReady bool) HealthUsecase {
	return &healthUsecase{storeBackend: storeBackend, contactReady: contactReady}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	contact := "ready"
	if !u.contactReady {
		contact = "unavailable"
	}
	return map[string]string{
		"status":  "ok",
		"store":   u.storeBackend,
		"contact": contact,
	}
}
