package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strptr(s string) *string { return &s }

func TestApplyToPartialUpdate(t *testing.T) {
	lecture := Lecture{
		Id:          primitive.NewObjectID(),
		Title:       "Intro",
		Date:        "2024-01-01",
		Time:        "10:00",
		MeetingLink: "http://x",
	}

	update := UpdateLectureRequest{
		Title:       strptr("Advanced"),
		Time:        strptr(""), // blank means keep old value
		MeetingLink: nil,
	}
	update.ApplyTo(&lecture)

	require.Equal(t, "Advanced", lecture.Title)
	require.Equal(t, "2024-01-01", lecture.Date)
	require.Equal(t, "10:00", lecture.Time)
	require.Equal(t, "http://x", lecture.MeetingLink)

	// reapplying the same update changes nothing
	before := lecture
	update.ApplyTo(&lecture)
	require.Equal(t, before, lecture)
}

func TestApplyToAllFields(t *testing.T) {
	lecture := Lecture{Title: "a", Date: "b", Time: "c", MeetingLink: "d"}
	update := UpdateLectureRequest{
		Title:       strptr("A"),
		Date:        strptr("B"),
		Time:        strptr("C"),
		MeetingLink: strptr("D"),
	}
	update.ApplyTo(&lecture)
	require.Equal(t, Lecture{Title: "A", Date: "B", Time: "C", MeetingLink: "D"}, lecture)
}
