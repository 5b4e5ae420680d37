package admin

type CreateAdminDTO struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}
