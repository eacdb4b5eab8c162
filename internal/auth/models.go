package auth

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Active       bool      `gorm:"not null;default:true" json:"-"`
}

func (User) TableName() string { return "users" }

type registerRequest struct {
	Name     string `json:"name" validate:"min=3" msg:"Nome deve ter no mínimo 3 caracteres"`
	Email    string `json:"email" validate:"required,email" msg:"Email inválido"`
	Password string `json:"password" validate:"min=6,maxbytes=72" msg:"Senha deve ter no mínimo 6 caracteres" msg_maxbytes:"Senha deve ter no máximo 72 bytes"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Email inválido"`
	Password string `json:"password" validate:"required" msg:"Senha é obrigatória"`
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}
