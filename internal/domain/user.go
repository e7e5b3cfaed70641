package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Gender is used by the nutrition calculator to pick the BMR constant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// User represents an account holder (client, trainer or admin).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Biometrics (consumed by plan generation) ---
	// Zero values are allowed; the nutrition calculator substitutes
	// documented fallbacks for missing measurements.
	WeightKg float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	HeightCm float64 `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	Age      int     `bson:"age,omitempty" json:"age,omitempty"`
	Gender   Gender  `bson:"gender,omitempty" json:"gender,omitempty"`

	// --- Client-specific ---
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}
