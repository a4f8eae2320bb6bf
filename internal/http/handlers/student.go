package handlers

import (
	"net/http"

	"jobboard/internal/app"
	"jobboard/internal/http/response"
)

type StudentHandler struct {
	students *app.StudentService
}

func NewStudentHandler(students *app.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

func (h *StudentHandler) Search(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	items, err := h.students.Search(r.Context(), p, app.StudentCriteria{
		Skills:  query.Get("skills"),
		Year:    query.Get("year"),
		College: query.Get("college"),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
