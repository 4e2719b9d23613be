// Package domain defines core data models, contracts and error types shared
// across ethdk. It contains plain types (wire/config) and interfaces only.
package domain
