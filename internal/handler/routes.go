package handler

import "fmt"

// APIV1Prefix is where the JSON API lives; the HTML pages sit at the root.
const APIV1Prefix = "/api/v1"

// Paths below are the page locations redirects and Location headers point at.

func ownerURL(id int64) string { return fmt.Sprintf("/owners/%d", id) }

func ownerEditURL(id int64) string { return ownerURL(id) + "/edit" }

func petURL(ownerID, petID int64) string { return fmt.Sprintf("%s/pets/%d", ownerURL(ownerID), petID) }

func petEditURL(ownerID, petID int64) string { return petURL(ownerID, petID) + "/edit" }

// apiURL maps a page path onto its JSON API counterpart.
func apiURL(path string) string { return APIV1Prefix + path }
