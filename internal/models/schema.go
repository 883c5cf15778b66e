// internal/models/schema.go
package models

import "fmt"

// CertificateField describes one form field of a certificate application.
type CertificateField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}

// CertificateSchemas fixes the field set for each certificate type. The
// submitted data map is validated against the schema of its type, so the
// free-form map stays well-formed per category.
var CertificateSchemas = map[CertificateType][]CertificateField{
	CertificateBirth: {
		{Name: "childName", Label: "Child's Full Name", Required: true},
		{Name: "dateOfBirth", Label: "Date of Birth", Required: true},
		{Name: "placeOfBirth", Label: "Place of Birth", Required: true},
		{Name: "fatherName", Label: "Father's Name", Required: true},
		{Name: "motherName", Label: "Mother's Name", Required: true},
		{Name: "address", Label: "Permanent Address", Required: true},
	},
	CertificateDeath: {
		{Name: "deceasedName", Label: "Deceased's Full Name", Required: true},
		{Name: "dateOfDeath", Label: "Date of Death", Required: true},
		{Name: "placeOfDeath", Label: "Place of Death", Required: true},
		{Name: "causeOfDeath", Label: "Cause of Death", Required: true},
		{Name: "applicantRelation", Label: "Applicant's Relation", Required: true},
		{Name: "address", Label: "Deceased's Last Address", Required: true},
	},
	CertificateMarriage: {
		{Name: "groomName", Label: "Groom's Full Name", Required: true},
		{Name: "brideName", Label: "Bride's Full Name", Required: true},
		{Name: "marriageDate", Label: "Date of Marriage", Required: true},
		{Name: "marriagePlace", Label: "Place of Marriage", Required: true},
		{Name: "witness1", Label: "Witness 1 Name", Required: true},
		{Name: "witness2", Label: "Witness 2 Name", Required: true},
	},
	CertificateCitizenship: {
		{Name: "applicantName", Label: "Applicant's Full Name", Required: true},
		{Name: "dateOfBirth", Label: "Date of Birth", Required: true},
		{Name: "fatherName", Label: "Father's Name", Required: true},
		{Name: "motherName", Label: "Mother's Name", Required: true},
		{Name: "permanentAddress", Label: "Permanent Address", Required: true},
		{Name: "reason", Label: "Purpose/Reason", Required: true},
	},
	CertificateResidency: {
		{Name: "applicantName", Label: "Applicant's Full Name", Required: true},
		{Name: "currentAddress", Label: "Current Address", Required: true},
		{Name: "residingSince", Label: "Residing Since", Required: true},
		{Name: "purpose", Label: "Purpose", Required: true},
		{Name: "landlordName", Label: "Landlord/Property Owner", Required: false},
		{Name: "contactNumber", Label: "Contact Number", Required: true},
	},
}

// ValidateApplicationData checks the submitted data map against the
// schema of the given certificate type.
func ValidateApplicationData(certType CertificateType, data map[string]string) error {
	schema, ok := CertificateSchemas[certType]
	if !ok {
		return fmt.Errorf("unknown certificate type %q", certType)
	}
	for _, field := range schema {
		if field.Required && data[field.Name] == "" {
			return fmt.Errorf("missing required field %q (%s)", field.Name, field.Label)
		}
	}
	return nil
}
