// Package config provides loading and parsing of protoreg.yaml files.
// The configuration names the registry's network partitions, identifies the
// canonical-contracts file, and carries the settings for the optional
// network probe pass and the exporter.
package config
