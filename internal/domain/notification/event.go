package notification

// TypeTrainerAssigned doubles as the AMQP routing key.
const TypeTrainerAssigned = "trainer.assigned"

type TrainerAssigned struct {
	TrainerName    string `json:"trainer_name"`
	TrainerEmail   string `json:"trainer_email"`
	ApprenticeName string `json:"apprentice_name"`
}
