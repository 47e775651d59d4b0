package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type Lecture struct {
	Id          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Date        string               `json:"date" bson:"date"`
	Time        string               `json:"time" bson:"time"`
	Teacher     primitive.ObjectID   `json:"teacher" bson:"teacher"`
	Students    []primitive.ObjectID `json:"students" bson:"students"`
	MeetingLink string               `json:"meetingLink" bson:"meetingLink"`
}

// UserSummary is the display form a lecture listing expands its user
// references into.
type UserSummary struct {
	Id    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// LectureView is a lecture with teacher and student references resolved.
type LectureView struct {
	Id          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Teacher     UserSummary        `json:"teacher"`
	Students    []UserSummary      `json:"students"`
	MeetingLink string             `json:"meetingLink"`
}

type CreateLectureRequest struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Teacher     string   `json:"teacher"`
	Students    []string `json:"students"`
	MeetingLink string   `json:"meetingLink"`
}

// UpdateLectureRequest is a partial update. The students list is not
// updatable here: it can only be set at creation time.
type UpdateLectureRequest struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	MeetingLink *string `json:"meetingLink"`
}

// ApplyTo overwrites only the fields that were supplied with a non-blank
// value; everything else keeps its prior value. A blank string therefore
// means "no change", so a meeting link cannot be cleared through an update.
func (r UpdateLectureRequest) ApplyTo(l *Lecture) {
	if r.Title != nil && *r.Title != "" {
		l.Title = *r.Title
	}
	if r.Date != nil && *r.Date != "" {
		l.Date = *r.Date
	}
	if r.Time != nil && *r.Time != "" {
		l.Time = *r.Time
	}
	if r.MeetingLink != nil && *r.MeetingLink != "" {
		l.MeetingLink = *r.MeetingLink
	}
}
