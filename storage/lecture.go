package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"lecture-backend/model"
)

// LectureStore persists lectures and resolves their user references when
// listing. References are weak: a lecture may point at a user that no
// longer exists, in which case only the id survives in the summary.
type LectureStore struct {
	lectures *mongo.Collection
	users    *mongo.Collection
}

func NewLectureStore(db *mongo.Database) *LectureStore {
	return &LectureStore{
		lectures: db.Collection(lectureCollection),
		users:    db.Collection(userCollection),
	}
}

func (s *LectureStore) Insert(ctx context.Context, lecture model.Lecture) (model.Lecture, error) {
	if lecture.Students == nil {
		lecture.Students = []primitive.ObjectID{}
	}
	res, err := s.lectures.InsertOne(ctx, lecture)
	if err != nil {
		return model.Lecture{}, fmt.Errorf("insert lecture: %w", err)
	}
	lecture.Id = res.InsertedID.(primitive.ObjectID)
	return lecture, nil
}

func (s *LectureStore) Get(ctx context.Context, id primitive.ObjectID) (model.Lecture, error) {
	var lecture model.Lecture
	err := s.lectures.FindOne(ctx, bson.M{"_id": id}).Decode(&lecture)
	if err == mongo.ErrNoDocuments {
		return model.Lecture{}, ErrNotFound
	}
	if err != nil {
		return model.Lecture{}, fmt.Errorf("find lecture: %w", err)
	}
	return lecture, nil
}

// List returns every lecture with teacher and student references expanded.
// Users are fetched in one $in query rather than per lecture.
func (s *LectureStore) List(ctx context.Context) ([]model.LectureView, error) {
	cursor, err := s.lectures.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find lectures: %w", err)
	}
	defer cursor.Close(ctx)

	var lectures []model.Lecture
	for cursor.Next(ctx) {
		var lecture model.Lecture
		if err := cursor.Decode(&lecture); err != nil {
			return nil, fmt.Errorf("decode lecture: %w", err)
		}
		lectures = append(lectures, lecture)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate lectures: %w", err)
	}

	summaries, err := s.userSummaries(ctx, lectures)
	if err != nil {
		return nil, err
	}

	views := make([]model.LectureView, 0, len(lectures))
	for _, lecture := range lectures {
		views = append(views, expand(lecture, summaries))
	}
	return views, nil
}

func (s *LectureStore) Replace(ctx context.Context, lecture model.Lecture) error {
	res, err := s.lectures.ReplaceOne(ctx, bson.M{"_id": lecture.Id}, lecture)
	if err != nil {
		return fmt.Errorf("replace lecture: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LectureStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.lectures.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete lecture: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LectureStore) userSummaries(ctx context.Context, lectures []model.Lecture) (map[primitive.ObjectID]model.UserSummary, error) {
	ids := make([]primitive.ObjectID, 0, len(lectures))
	seen := make(map[primitive.ObjectID]bool)
	add := func(id primitive.ObjectID) {
		if !id.IsZero() && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, lecture := range lectures {
		add(lecture.Teacher)
		for _, studentID := range lecture.Students {
			add(studentID)
		}
	}

	summaries := make(map[primitive.ObjectID]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find lecture users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user model.PublicUser
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("decode lecture user: %w", err)
		}
		summaries[user.Id] = model.UserSummary{Id: user.Id, Name: user.Name, Email: user.Email}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate lecture users: %w", err)
	}
	return summaries, nil
}

func expand(lecture model.Lecture, summaries map[primitive.ObjectID]model.UserSummary) model.LectureView {
	view := model.LectureView{
		Id:          lecture.Id,
		Title:       lecture.Title,
		Date:        lecture.Date,
		Time:        lecture.Time,
		Teacher:     summaryFor(lecture.Teacher, summaries),
		Students:    make([]model.UserSummary, 0, len(lecture.Students)),
		MeetingLink: lecture.MeetingLink,
	}
	for _, studentID := range lecture.Students {
		view.Students = append(view.Students, summaryFor(studentID, summaries))
	}
	return view
}

func summaryFor(id primitive.ObjectID, summaries map[primitive.ObjectID]model.UserSummary) model.UserSummary {
	if s, ok := summaries[id]; ok {
		return s
	}
	// dangling reference: keep the id so the client can still show something
	return model.UserSummary{Id: id}
}
