package handler

import "net/http"

func (h *Handler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repository.GetAllCourses()
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.successResponse(w, "courses fetched", courses)
}

func (h *Handler) GetAllRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.repository.GetAllRooms()
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.successResponse(w, "rooms fetched", rooms)
}
