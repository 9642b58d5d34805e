package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Genoscope Variant Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Genoscope variant API!"
	SERVICE_DESCRIPTION ServiceInfo = "Browse ClinVar and IBD risk variants, compute polygenic risk scores and look up KEGG pathways."

	SERVICE_ARTIFACT    ServiceInfo = "genoscope"
	SERVICE_VERSION     ServiceInfo = "0.1.0"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.genoscope:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
