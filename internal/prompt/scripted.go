package prompt

// Scripted replays canned answers in order. When a queue runs dry the
// question's default is used (Select chooses nothing).
type Scripted struct {
	Selections [][]string
	Confirms   []bool
	Inputs     []string

	// Asked records every question in the order it was asked
	Asked []string
}

// Select implements Prompter
func (s *Scripted) Select(title string, _ []Option) ([]string, error) {
	s.Asked = append(s.Asked, title)
	if len(s.Selections) == 0 {
		return nil, nil
	}
	next := s.Selections[0]
	s.Selections = s.Selections[1:]
	return next, nil
}

// Confirm implements Prompter
func (s *Scripted) Confirm(question string, def bool) (bool, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Confirms) == 0 {
		return def, nil
	}
	next := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return next, nil
}

// Input implements Prompter
func (s *Scripted) Input(question, def string) (string, error) {
	s.Asked = append(s.Asked, question)
	if len(s.Inputs) == 0 {
		return def, nil
	}
	next := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return next, nil
}
