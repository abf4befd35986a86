package demorequest

import "time"

// DemoRequest is a stored prospective-customer request for a product walkthrough.
// ID and CreatedAt are assigned by the repository on creation; records are never updated.
type DemoRequest struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	Name      string    `json:"name" bson:"name" db:"name"`
	Email     string    `json:"email" bson:"email" db:"email"`
	Company   string    `json:"company" bson:"company" db:"company"`
	UseCase   *string   `json:"useCase,omitempty" bson:"useCase,omitempty" db:"use_case"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}

// New builds an unsaved record from validated input.
func New(in Input) *DemoRequest {
	return &DemoRequest{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		UseCase: in.UseCase,
	}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (d *DemoRequest) Clone() *DemoRequest {
	cp := *d
	if d.UseCase != nil {
		uc := *d.UseCase
		cp.UseCase = &uc
	}
	return &cp
}
