// Package services contains the application services of the chatadmin
// client: the administrative user directory and the self-service profile
// editor. Both operate over the api.Client seam, keep the session store
// authoritative for the current identity, and arm the shared notification
// channel with the outcome of every mutation.
package services
