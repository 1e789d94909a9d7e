package marshaller

// Service defines the marshaller interface.
type Service interface {
	Marshal(data interface{}) ([]byte, error)
	Unmarshal(data []byte, target interface{}) error
}
