package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProfilePic is used when a user has not uploaded a picture yet.
const DefaultProfilePic = "https://cdn-icons-png.flaticon.com/512/3135/3135715.png"

// SecurityQuestions is the fixed set a user may choose from at signup.
// The empty string means no question is configured.
var SecurityQuestions = []string{
	"What is your favorite childhood nickname?",
	"What is the name of your first pet?",
	"What city were you born in?",
	"What is your mother's maiden name?",
	"What is your favorite teacher's name?",
}

// ValidSecurityQuestion reports whether q is empty or one of the fixed set.
func ValidSecurityQuestion(q string) bool {
	if q == "" {
		return true
	}
	for _, s := range SecurityQuestions {
		if s == q {
			return true
		}
	}
	return false
}

// Education is a sub-document owned by a User. Every entry receives a
// server-assigned ObjectID at creation so it can be targeted for
// update/delete independently of its list position.
type Education struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Institution string             `bson:"institution" json:"institution"`
	Degree      string             `bson:"degree" json:"degree"`
	Field       string             `bson:"field" json:"field"`
	StartYear   string             `bson:"startYear" json:"startYear"`
	EndYear     string             `bson:"endYear" json:"endYear"`
}

// Project is a sub-document owned by a User.
type Project struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Link        string             `bson:"link" json:"link"`
}

// User is the aggregate root for the account and profile domain.
// Password and SecurityAnswer hold bcrypt hashes and are never serialized.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	SecurityQuestion string             `bson:"securityQuestion" json:"securityQuestion"`
	SecurityAnswer   string             `bson:"securityAnswer" json:"-"`
	Bio              string             `bson:"bio" json:"bio"`
	ProfilePic       string             `bson:"profilePic" json:"profilePic"`
	Location         string             `bson:"location" json:"location"`
	Phone            string             `bson:"phone" json:"phone"`
	Website          string             `bson:"website" json:"website"`
	Education        []Education        `bson:"education" json:"education"`
	Projects         []Project          `bson:"projects" json:"projects"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindEducation returns a pointer into the education list, or nil.
func (u *User) FindEducation(id primitive.ObjectID) *Education {
	for i := range u.Education {
		if u.Education[i].ID == id {
			return &u.Education[i]
		}
	}
	return nil
}

// RemoveEducation deletes the entry with the given id, reporting whether it existed.
func (u *User) RemoveEducation(id primitive.ObjectID) bool {
	for i := range u.Education {
		if u.Education[i].ID == id {
			u.Education = append(u.Education[:i], u.Education[i+1:]...)
			return true
		}
	}
	return false
}

// FindProject returns a pointer into the projects list, or nil.
func (u *User) FindProject(id primitive.ObjectID) *Project {
	for i := range u.Projects {
		if u.Projects[i].ID == id {
			return &u.Projects[i]
		}
	}
	return nil
}

// RemoveProject deletes the entry with the given id, reporting whether it existed.
func (u *User) RemoveProject(id primitive.ObjectID) bool {
	for i := range u.Projects {
		if u.Projects[i].ID == id {
			u.Projects = append(u.Projects[:i], u.Projects[i+1:]...)
			return true
		}
	}
	return false
}
