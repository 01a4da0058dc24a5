package handler

import (
	"net/http"

	"github.com/azzbr/handyman-backend/internal/usecase"
	"github.com/azzbr/handyman-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TechnicianHandler struct {
	technicianUsecase usecase.TechnicianUsecase
}

func NewTechnicianHandler(technicianUsecase usecase.TechnicianUsecase) *TechnicianHandler {
	return &TechnicianHandler{technicianUsecase: technicianUsecase}
}

func (h *TechnicianHandler) GetAllTechnicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.technicianUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list technicians")
		return
	}

	response.Success(w, http.StatusOK, "Technicians retrieved successfully", technicians)
}

func (h *TechnicianHandler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	technicianID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid technician ID", nil)
		return
	}

	technician, err := h.technicianUsecase.GetByID(r.Context(), technicianID)
	if err != nil {
		switch err {
		case usecase.ErrTechnicianNotFound:
			response.NotFound(w, "Technician not found")
		default:
			response.InternalServerError(w, "Failed to get technician")
		}
		return
	}

	response.Success(w, http.StatusOK, "Technician retrieved successfully", technician)
}
