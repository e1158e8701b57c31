package models

// UserStats summarizes one user's activity.
type UserStats struct {
	TotalAdded    int64 `json:"totalAdded"`
	TotalDonated  int64 `json:"totalDonated"`
	TotalRequests int64 `json:"totalRequests"`
}

// AdminStats summarizes the whole marketplace.
type AdminStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalFoods         int64 `json:"totalFoods"`
	TotalRequests      int64 `json:"totalRequests"`
	CompletedDonations int64 `json:"completedDonations"`
}
