package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"lecture-backend/middleware"
	"lecture-backend/model"
	"lecture-backend/storage"
	"lecture-backend/util"
)

// LectureStore is what the lecture handlers need from persistence.
type LectureStore interface {
	Insert(ctx context.Context, lecture model.Lecture) (model.Lecture, error)
	List(ctx context.Context) ([]model.LectureView, error)
	Get(ctx context.Context, id primitive.ObjectID) (model.Lecture, error)
	Replace(ctx context.Context, lecture model.Lecture) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type LectureController struct {
	lectures LectureStore
	log      *zap.SugaredLogger
}

func NewLectureController(lectures LectureStore, log *zap.SugaredLogger) *LectureController {
	return &LectureController{lectures: lectures, log: log}
}

func (lc *LectureController) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		util.WriteErrorResponse(w, http.StatusUnauthorized, "Access denied: No token provided")
		return
	}
	if !identity.Role.CanManageLectures() {
		util.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized: Only teachers or admins can create lectures")
		return
	}

	var req model.CreateLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Title is required")
		return
	}

	teacherID, err := primitive.ObjectIDFromHex(req.Teacher)
	if err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid teacher id")
		return
	}
	studentIDs := make([]primitive.ObjectID, 0, len(req.Students))
	for _, raw := range req.Students {
		studentID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid student id")
			return
		}
		studentIDs = append(studentIDs, studentID)
	}

	lecture, err := lc.lectures.Insert(r.Context(), model.Lecture{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Teacher:     teacherID,
		Students:    studentIDs,
		MeetingLink: req.MeetingLink,
	})
	if err != nil {
		lc.log.Errorw("create lecture", "title", req.Title, "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusCreated, struct {
		Message string        `json:"message"`
		Lecture model.Lecture `json:"lecture"`
	}{Message: "Lecture created successfully", Lecture: lecture})
}

func (lc *LectureController) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := lc.lectures.List(r.Context())
	if err != nil {
		lc.log.Errorw("list lectures", "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}
	if views == nil {
		views = []model.LectureView{}
	}
	util.WriteSuccessResponse(w, http.StatusOK, views)
}

func (lc *LectureController) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}

	lecture, err := lc.lectures.Get(r.Context(), id)
	if err == storage.ErrNotFound {
		util.WriteErrorResponse(w, http.StatusNotFound, "Lecture not found")
		return
	}
	if err != nil {
		lc.log.Errorw("get lecture", "lecture_id", id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusOK, lecture)
}

// HandleUpdate checks existence before role: a caller who is both
// unauthorized and targeting a missing lecture gets 404, not 403.
func (lc *LectureController) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}

	lecture, err := lc.lectures.Get(r.Context(), id)
	if err == storage.ErrNotFound {
		util.WriteErrorResponse(w, http.StatusNotFound, "Lecture not found")
		return
	}
	if err != nil {
		lc.log.Errorw("get lecture", "lecture_id", id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		util.WriteErrorResponse(w, http.StatusUnauthorized, "Access denied: No token provided")
		return
	}
	if !identity.Role.CanManageLectures() {
		util.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized: Only teachers or admins can update lectures")
		return
	}

	var req model.UpdateLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.ApplyTo(&lecture)

	if err := lc.lectures.Replace(r.Context(), lecture); err != nil {
		lc.log.Errorw("update lecture", "lecture_id", id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Lecture model.Lecture `json:"lecture"`
	}{Message: "Lecture updated successfully", Lecture: lecture})
}

// HandleDelete follows the same ordering as HandleUpdate: 404 before 403.
func (lc *LectureController) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		util.WriteErrorResponse(w, http.StatusBadRequest, "Invalid lecture id")
		return
	}

	if _, err := lc.lectures.Get(r.Context(), id); err != nil {
		if err == storage.ErrNotFound {
			util.WriteErrorResponse(w, http.StatusNotFound, "Lecture not found")
			return
		}
		lc.log.Errorw("get lecture", "lecture_id", id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		util.WriteErrorResponse(w, http.StatusUnauthorized, "Access denied: No token provided")
		return
	}
	if !identity.Role.CanManageLectures() {
		util.WriteErrorResponse(w, http.StatusForbidden, "Unauthorized: Only teachers or admins can delete lectures")
		return
	}

	if err := lc.lectures.Delete(r.Context(), id); err != nil && err != storage.ErrNotFound {
		lc.log.Errorw("delete lecture", "lecture_id", id.Hex(), "err", err)
		util.WriteErrorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}

	util.WriteSuccessResponse(w, http.StatusOK, map[string]string{
		"message": "Lecture deleted successfully",
	})
}
