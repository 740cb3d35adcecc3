package samgov

import (
	"encoding/json"
	"fmt"
	"strings"

	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/types"
)

// notice is one opportunity from the search payload. SAM.gov ships several
// fields in more than one shape (object, scalar, or list depending on the
// notice), so those decode through tolerant accessor types that default to
// their zero value on anything unexpected.
type notice struct {
	NoticeID           string     `json:"noticeId"`
	Title              string     `json:"title"`
	SolicitationNumber string     `json:"solicitationNumber"`
	OrganizationName   string     `json:"organizationName"`
	DepartmentName     string     `json:"departmentName"`
	PostedDate         string     `json:"postedDate"`
	ResponseDeadLine   string     `json:"responseDeadLine"`
	NaicsCode          string     `json:"naicsCode"`
	Description        string     `json:"description"`
	Award              award      `json:"award"`
	PlaceOfPerformance place      `json:"placeOfPerformance"`
	PointOfContact     contactSet `json:"pointOfContact"`
}

func (n notice) lead() domain.Lead {
	agency := n.OrganizationName
	if agency == "" {
		agency = n.DepartmentName
	}

	oppURL := ""
	if n.NoticeID != "" {
		oppURL = fmt.Sprintf("https://sam.gov/opp/%s/view", n.NoticeID)
	}

	primary := n.PointOfContact.primary()

	return domain.Lead{
		NativeID:           n.NoticeID,
		Title:              n.Title,
		SolicitationNumber: n.SolicitationNumber,
		Agency:             agency,
		PostedDate:         n.PostedDate,
		ResponseDeadline:   n.ResponseDeadLine,
		NAICSCode:          n.NaicsCode,
		AwardAmount:        float64(n.Award.Amount),
		Location:           n.PlaceOfPerformance.display(),
		Description:        n.Description,
		ContactName:        primary.FullName,
		ContactEmail:       primary.Email,
		ContactPhone:       primary.Phone,
		URL:                oppURL,
		Source:             "sam_gov",
		Sector:             domain.SectorPublic,
		Type:               domain.TypeContract,
	}
}

// award appears as {"amount": ...} or as a bare amount.
type award struct {
	Amount types.Amount
}

func (a *award) UnmarshalJSON(b []byte) error {
	var obj struct {
		Amount types.Amount `json:"amount"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		a.Amount = obj.Amount
		return nil
	}
	var amt types.Amount
	if err := json.Unmarshal(b, &amt); err == nil {
		a.Amount = amt
	}
	return nil
}

// optName appears as {"name": "..."}, a bare string, or a code.
type optName struct {
	Name string
}

func (o *optName) UnmarshalJSON(b []byte) error {
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		o.Name = obj.Name
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		o.Name = s
	}
	return nil
}

type place struct {
	City  optName `json:"city"`
	State optName `json:"state"`
}

func (p *place) UnmarshalJSON(b []byte) error {
	type plain place
	var v plain
	if err := json.Unmarshal(b, &v); err == nil {
		*p = place(v)
	}
	return nil
}

func (p place) display() string {
	parts := make([]string, 0, 2)
	if p.City.Name != "" {
		parts = append(parts, p.City.Name)
	}
	if p.State.Name != "" {
		parts = append(parts, p.State.Name)
	}
	return strings.Join(parts, ", ")
}

type contact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// contactSet appears as a list of contacts or a single contact object.
type contactSet []contact

func (cs *contactSet) UnmarshalJSON(b []byte) error {
	var list []contact
	if err := json.Unmarshal(b, &list); err == nil {
		*cs = list
		return nil
	}
	var one contact
	if err := json.Unmarshal(b, &one); err == nil {
		*cs = contactSet{one}
	}
	return nil
}

func (cs contactSet) primary() contact {
	if len(cs) == 0 {
		return contact{}
	}
	return cs[0]
}
