package geo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/backend/internal/domain/geo"
)

// CountryResponse represents a country in API responses
type CountryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// StateResponse represents a state in API responses
type StateResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CountryID uuid.UUID `json:"country_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DirectoryService exposes the read-only country and state catalog
type DirectoryService struct {
	directory geo.Directory
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(directory geo.Directory) *DirectoryService {
	return &DirectoryService{directory: directory}
}

// ListCountries returns all countries ordered by name
func (s *DirectoryService) ListCountries(ctx context.Context) ([]CountryResponse, error) {
	countries, err := s.directory.GetCountries(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CountryResponse, len(countries))
	for i, c := range countries {
		responses[i] = CountryResponse{
			ID:        c.ID,
			Name:      c.Name,
			Code:      c.Code,
			CreatedAt: c.CreatedAt,
		}
	}
	return responses, nil
}

// ListStates returns a country's states ordered by name
func (s *DirectoryService) ListStates(ctx context.Context, countryID uuid.UUID) ([]StateResponse, error) {
	if _, err := s.directory.GetCountry(ctx, countryID); err != nil {
		return nil, err
	}

	states, err := s.directory.GetStates(ctx, countryID)
	if err != nil {
		return nil, err
	}

	responses := make([]StateResponse, len(states))
	for i, st := range states {
		responses[i] = StateResponse{
			ID:        st.ID,
			Name:      st.Name,
			Code:      st.Code,
			CountryID: st.CountryID,
			CreatedAt: st.CreatedAt,
		}
	}
	return responses, nil
}
