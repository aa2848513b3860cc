package assignment

const MessageQueued = "Notificación encolada."

type (
	NotifyRequest struct {
		TrainerID    int64 `json:"trainer_id"`
		ApprenticeID int64 `json:"apprentice_id"`
	}
	NotifyResponse struct {
		Message string `json:"message"`
	}
)
