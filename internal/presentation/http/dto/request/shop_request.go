package request

// ManagerRequest describes the manager profile of a shop
type ManagerRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// CreateShopRequest represents a create shop request
type CreateShopRequest struct {
	Name     string          `json:"name" binding:"required,max=255"`
	Location string          `json:"location"`
	Phone    string          `json:"phone"`
	Manager  *ManagerRequest `json:"manager"`
}

// UpdateShopRequest represents an update shop request
type UpdateShopRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
}

// ResetManagerPasswordRequest sets a new password on a shop's manager
type ResetManagerPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
