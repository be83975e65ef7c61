package domain

type Voter struct {
	ID             int64  `json:"voter_id"`
	FullName       string `json:"full_name"`
	NIDNumber      string `json:"nid_number"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	ConstituencyID int64  `json:"constituency_id"`
	Password       string `json:"-"`
}

type Admin struct {
	ID       int64  `json:"admin_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"-"`
}

type Constituency struct {
	ID   int64  `json:"constituency_id"`
	Name string `json:"name"`
}
