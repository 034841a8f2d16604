package validation

// Field names shared by the schemas and the form drafts.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
)

// Field is one schema entry: a name and its rules in evaluation order.
// DependsOn names sibling fields the rules read.
type Field struct {
	Name      string
	Rules     []Rule
	DependsOn []string
}

// Schema is an ordered list of fields.
type Schema struct {
	fields []Field
	index  map[string]int
}

func NewSchema(fields ...Field) *Schema {
	s := &Schema{fields: fields, index: make(map[string]int, len(fields))}
	for i, f := range fields {
		s.index[f.Name] = i
	}
	return s
}

// Fields returns the field names in order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Has reports whether the schema declares field.
func (s *Schema) Has(field string) bool {
	_, ok := s.index[field]
	return ok
}

// Validate returns the message of the first failing rule of field, or "".
// Unknown fields are always valid.
func (s *Schema) Validate(field string, values map[string]string) string {
	i, ok := s.index[field]
	if !ok {
		return ""
	}
	v := values[field]
	for _, rule := range s.fields[i].Rules {
		if msg := rule(v, values); msg != "" {
			return msg
		}
	}
	return ""
}

// ValidateAll validates every field and returns the failing ones.
func (s *Schema) ValidateAll(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.fields {
		if msg := s.Validate(f.Name, values); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

// Dependents lists the fields whose rules read field.
func (s *Schema) Dependents(field string) []string {
	var out []string
	for _, f := range s.fields {
		for _, d := range f.DependsOn {
			if d == field {
				out = append(out, f.Name)
				break
			}
		}
	}
	return out
}

func LoginSchema() *Schema {
	return NewSchema(
		Field{Name: FieldUsername, Rules: []Rule{Required("Username")}},
		Field{Name: FieldPassword, Rules: []Rule{
			Required("Password"),
			MinLength(6, "Password must be at least 6 characters"),
		}},
	)
}

func SignupSchema() *Schema {
	return NewSchema(
		Field{Name: FieldUsername, Rules: []Rule{
			Required("Username"),
			MinLength(3, "Username must be at least 3 characters"),
		}},
		Field{Name: FieldPassword, Rules: []Rule{
			Required("Password"),
			MinLength(6, "Password must be at least 6 characters"),
		}},
		Field{
			Name: FieldConfirmPassword,
			Rules: []Rule{
				RequiredMsg("Please confirm your password"),
				Matches(FieldPassword, "Passwords do not match"),
			},
			DependsOn: []string{FieldPassword},
		},
	)
}

func AddUserSchema() *Schema {
	return NewSchema(
		Field{Name: FieldUsername, Rules: []Rule{
			Required("Username"),
			MinLength(3, "Username must be at least 3 characters"),
		}},
		Field{Name: FieldFirstName, Rules: []Rule{Required("First name")}},
		Field{Name: FieldLastName, Rules: []Rule{Required("Last name")}},
		Field{Name: FieldEmail, Rules: []Rule{Required("Email"), Email()}},
		Field{Name: FieldPassword, Rules: []Rule{
			Required("Password"),
			MinLength(8, "Password must be at least 8 characters"),
		}},
	)
}

func EditUserSchema() *Schema {
	return NewSchema(
		Field{Name: FieldUsername, Rules: []Rule{Required("Username")}},
		Field{Name: FieldFirstName, Rules: []Rule{Required("First name")}},
		Field{Name: FieldLastName, Rules: []Rule{Required("Last name")}},
		Field{Name: FieldEmail, Rules: []Rule{Required("Email"), Email()}},
	)
}
