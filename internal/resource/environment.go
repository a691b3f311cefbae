package resource

import "fmt"

// Environment is the deployment environment a record belongs to.
type Environment int

const (
	NoEnvironment Environment = iota
	Development
	Staging
	Production
)

func (e Environment) String() string {
	switch e {
	case Development:
		return "development"
	case Staging:
		return "staging"
	case Production:
		return "production"
	default:
		return "none"
	}
}

// ParseEnvironment parses an environment from its string form. An empty
// string parses as NoEnvironment.
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "", "none":
		return NoEnvironment, nil
	case "development":
		return Development, nil
	case "staging":
		return Staging, nil
	case "production":
		return Production, nil
	default:
		return NoEnvironment, fmt.Errorf("unknown environment: %q", s)
	}
}

func (e Environment) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Environment) UnmarshalText(text []byte) error {
	env, err := ParseEnvironment(string(text))
	if err != nil {
		return err
	}
	*e = env
	return nil
}
