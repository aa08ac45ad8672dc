package communication

type CreateCommunicationRequest struct {
	ClientID         int64  `json:"client_id" validate:"required"`
	ProjectID        *int64 `json:"project_id"`
	Date             string `json:"date" validate:"required"`
	Mode             string `json:"mode" validate:"required,oneof=email call meeting"`
	Summary          string `json:"summary" validate:"required,min=10"`
	FollowUpRequired bool   `json:"follow_up_required"`
	FollowUpDate     string `json:"follow_up_date"`
}

type UpdateCommunicationRequest struct {
	ClientID         *int64  `json:"client_id"`
	ProjectID        *int64  `json:"project_id"`
	Date             *string `json:"date"`
	Mode             *string `json:"mode" validate:"omitempty,oneof=email call meeting"`
	Summary          *string `json:"summary" validate:"omitempty,min=10"`
	FollowUpRequired *bool   `json:"follow_up_required"`
	FollowUpDate     *string `json:"follow_up_date"`
}
