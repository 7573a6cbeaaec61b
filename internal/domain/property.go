package domain

import "time"

type Building struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	OwnerID   int32     `json:"owner_id"`
	ManagerID int32     `json:"manager_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Apartment struct {
	ID         int32  `json:"id"`
	BuildingID int32  `json:"building_id"`
	Unit       string `json:"unit"`
	RenterID   *int32 `json:"renter_id"` // NULL while vacant
}
