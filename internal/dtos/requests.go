package dtos

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest only touches the fields that are present.
type ProfileUpdateRequest struct {
	Name          *string     `json:"name"`
	Bio           *string     `json:"bio"`
	Skills        *StringList `json:"skills"`
	WalletAddress *string     `json:"walletAddress"`
	LinkedIn      *string     `json:"linkedin"`

	// Set by the handler after the upload is stored.
	Resume *string `json:"-"`
}

type JobCreationRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Budget      float64    `json:"budget" binding:"required,gt=0"`
	Skills      StringList `json:"skills"`
	Tags        StringList `json:"tags"`
	Location    string     `json:"location"`
}

type ApplyRequest struct {
	UserID string `json:"userId"`
	JobID  string `json:"jobId"`
}

type PaymentLogRequest struct {
	JobID  string  `json:"jobId" binding:"required"`
	TxHash string  `json:"txHash" binding:"required"`
	Wallet string  `json:"wallet" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Status string  `json:"status" binding:"omitempty,oneof=success failed"`
}

type MatchScoreRequest struct {
	JobDescription  string     `json:"jobDescription"`
	JobSkills       StringList `json:"jobSkills"`
	CandidateBio    string     `json:"candidateBio"`
	CandidateSkills StringList `json:"candidateSkills"`
}
