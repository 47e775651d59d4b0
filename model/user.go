package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role gates lecture-mutating operations. It is a closed set: anything
// outside the three constants is rejected at registration time.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// CanManageLectures reports whether the role may create, update or delete
// lectures. Students may only read.
func (r Role) CanManageLectures() bool {
	return r == RoleTeacher || r == RoleAdmin
}

type User struct {
	Id       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Password string             `json:"-" bson:"password"`
	Role     Role               `json:"role" bson:"role"`
}

// PublicUser is the read-side view of a user. It has no password field at
// all, so the hash cannot leak through any encoding path.
type PublicUser struct {
	Id    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
	Role  Role               `json:"role" bson:"role"`
}

func (u User) Public() PublicUser {
	return PublicUser{Id: u.Id, Name: u.Name, Email: u.Email, Role: u.Role}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
