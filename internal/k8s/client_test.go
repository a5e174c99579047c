package k8s

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"github.com/nauticalab/envschema/pkg/schema"
)

func TestParseObjectRef(t *testing.T) {
	tests := []struct {
		in      string
		want    ObjectRef
		wantErr bool
	}{
		{in: "billing/app-config", want: ObjectRef{Namespace: "billing", Name: "app-config"}},
		{in: "app-config", want: ObjectRef{Namespace: "default", Name: "app-config"}},
		{in: "", wantErr: true},
		{in: "billing/", wantErr: true},
		{in: "/app-config", wantErr: true},
		{in: "a/b/c", wantErr: true},
	}

	assert.Equal(t, "billing/app-config", ObjectRef{Namespace: "billing", Name: "app-config"}.String())

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseObjectRef(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_ConfigMapSnapshot(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "app-config", Namespace: "billing"},
			Data:       map[string]string{"PORT": "8080", "MODE": "prod"},
			BinaryData: map[string][]byte{"logo.png": {0x89}},
		},
	)
	client := NewClientWithInterface(clientset)

	snapshot, err := client.ConfigMapSnapshot(context.Background(), ObjectRef{Namespace: "billing", Name: "app-config"})
	require.NoError(t, err)
	assert.Equal(t, schema.Snapshot{"PORT": "8080", "MODE": "prod"}, snapshot)

	_, err = client.ConfigMapSnapshot(context.Background(), ObjectRef{Namespace: "other", Name: "app-config"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get configmap other/app-config")
}

func TestClient_ConfigMapsSnapshotWithLabels(t *testing.T) {
	labels := map[string]string{"app": "billing"}
	clientset := fake.NewSimpleClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "b-overrides", Namespace: "default", Labels: labels},
			Data:       map[string]string{"PORT": "9090"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "a-base", Namespace: "default", Labels: labels},
			Data:       map[string]string{"PORT": "8080", "HOST": "0.0.0.0"},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "unrelated", Namespace: "default"},
			Data:       map[string]string{"OTHER": "x"},
		},
	)
	client := NewClientWithInterface(clientset)

	snapshot, err := client.ConfigMapsSnapshotWithLabels(context.Background(), "", "app=billing")
	require.NoError(t, err)
	assert.Equal(t, schema.Snapshot{"PORT": "9090", "HOST": "0.0.0.0"}, snapshot)
}

func TestClient_ConfigMapsSnapshotWithLabels_ListError(t *testing.T) {
	clientset := fake.NewSimpleClientset()
	clientset.PrependReactor("list", "configmaps", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, fmt.Errorf("forbidden")
	})
	client := NewClientWithInterface(clientset)

	_, err := client.ConfigMapsSnapshotWithLabels(context.Background(), "billing", "app=billing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in namespace billing")
	assert.Contains(t, err.Error(), "forbidden")
}

func TestClient_SecretSnapshot(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		&corev1.Secret{
			ObjectMeta: metav1.ObjectMeta{Name: "db", Namespace: "billing"},
			Data: map[string][]byte{
				"DB_PASSWORD": []byte("s3cret"),
				"DB_USER":     []byte("billing"),
			},
			StringData: map[string]string{"DB_USER": "admin"},
		},
	)
	client := NewClientWithInterface(clientset)

	snapshot, err := client.SecretSnapshot(context.Background(), ObjectRef{Namespace: "billing", Name: "db"})
	require.NoError(t, err)
	assert.Equal(t, schema.Snapshot{"DB_PASSWORD": "s3cret", "DB_USER": "admin"}, snapshot)

	_, err = client.SecretSnapshot(context.Background(), ObjectRef{Namespace: "billing", Name: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get secret billing/missing")
}
