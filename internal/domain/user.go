package domain

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleRenter  Role = "renter"
)

type User struct {
	ID        int32  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}
