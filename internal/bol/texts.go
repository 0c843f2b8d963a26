package bol

// Fixed boilerplate below renders unconditionally; no shipment field drives
// its wording.

const documentTitle = "BILL OF LADING"

const termsLine = "Terms: Third Party Prepaid"

const noteBarText = "NOTE: Liability limitation for loss or damage in this shipment may be applicable. " +
	"See 49 USC 14706(c)(1)(A) and (B)."

const legalParagraph = "Received, subject to the agreement between the Carrier and listed Third Party. " +
	"In effect on the date of shipment Carrier agrees that listed Third Party is the sole payer " +
	"of the corresponding freight bill. This Bill of Lading is not subject to any tariffs or classifications, " +
	"whether individually determined or filed with any federal or state regulatory agency, except as " +
	"specifically agreed to in writing by the listed Third Party and Carrier."

const shipperCertification = "This is to certify that the above named materials are properly classified, described, packaged, " +
	"marked and labeled, and are in proper condition for transportation according to the applicable " +
	"regulations of the Department of Transportation."

const driverAcknowledgment = "Carrier acknowledges receipt of packages and required four (4) placards. Carrier certifies emergency " +
	"response information was made available and/or carrier has the Department of Transportation emergency " +
	"response guidebook or equivalent documentation in vehicle. Property described above is received in good " +
	"order, except as noted."

const noItemsNotice = "No items provided"
