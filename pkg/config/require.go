package config

// Validate reports every required setting that is missing, in a fixed order.
func (c Config) Validate() []string {
	var missing []string
	if len(c.SessionSecret) == 0 {
		missing = append(missing, "SESSION_SECRET")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		missing = append(missing, "SERVER_PORT")
	}
	return missing
}
