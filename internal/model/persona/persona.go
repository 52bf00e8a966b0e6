package persona

import "fmt"

// Persona describes one simulated patient authored by the instructor.
// The roster is loaded once at startup and is read-only afterwards.
type Persona struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Occupation  string `json:"occupation"`
	Description string `json:"description"`
}

// ID returns the catalog key for the persona. The roster file carries no
// separate identifier, so the unique name doubles as the id.
func (p Persona) ID() string {
	return p.Name
}

// Describe renders the role-browser card for the persona.
func (p Persona) Describe() string {
	return fmt.Sprintf("🧑‍⚕️ %s（%d歲, %s）\n職業：%s\n描述：%s",
		p.Name, p.Age, p.Gender, p.Occupation, p.Description)
}

func (p Persona) validate() error {
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	if p.Age < 0 {
		return fmt.Errorf("negative age %d", p.Age)
	}
	return nil
}
