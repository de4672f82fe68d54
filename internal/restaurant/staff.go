package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Staff roles.
const (
	RoleWaiter  = "waiter"
	RoleManager = "manager"
	RoleChef    = "chef"
)

// Staff is read-only reference data seeded at startup. The password is
// an opaque credential checked verbatim; this service is not the
// security boundary.
type Staff struct {
	ID        uuid.UUID `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (s *Staff) GetID() uuid.UUID {
	return s.ID
}

func (s *Staff) ResourceType() string {
	return "staff"
}

func (s *Staff) SetID(id uuid.UUID) {
	s.ID = id
}

func NewStaff() *Staff {
	return &Staff{
		ID: apt.GenerateNewID(),
	}
}

func (s *Staff) EnsureID() {
	if s.ID == uuid.Nil {
		s.ID = apt.GenerateNewID()
	}
}

func (s *Staff) BeforeCreate() {
	s.EnsureID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
}

func (s *Staff) BeforeUpdate() {
	s.UpdatedAt = time.Now()
}

// CheckPassword compares the stored opaque credential.
func (s *Staff) CheckPassword(password string) bool {
	return s.Password != "" && s.Password == password
}
