package web

import (
	"encoding/json"
	"net/http"

	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.devices.Devices())
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	ieee := r.PathValue("ieee")
	view, ok := s.devices.Device(ieee)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "device not found"})
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

type registryCluster struct {
	ID   zcl.ClusterID `json:"id"`
	Name string        `json:"name"`
}

// handleRegistry renders the registry contents: for each kind, the cluster
// ids filed under it with their catalog names.
func (s *Server) handleRegistry(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]registryCluster)
	for _, kind := range channel.Kinds() {
		ids := s.registry.Clusters(kind)
		if len(ids) == 0 {
			continue
		}
		list := make([]registryCluster, 0, len(ids))
		for _, id := range ids {
			name := id.String()
			if def := clusters.Lookup(id); def != nil {
				name = def.Name
			}
			list = append(list, registryCluster{ID: id, Name: name})
		}
		out[kind.String()] = list
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writeJSON encode failed", "err", err)
	}
}
